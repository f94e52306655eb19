package sms

//go:generate go tool mockgen -source=pipeline.go -destination=mock_pipeline.go -package=sms

import (
	"i4.energy/across/gsmradio/at"
	"i4.energy/across/gsmradio/pdu"
)

// Pipeline is the part of the command pipeline the manager drives.
// *at.Pipeline implements it.
type Pipeline interface {
	ListSMS(store at.SMSStore, reply chan<- at.Reply) error
	SendSMS(sub pdu.Submission, reply chan<- at.Reply) error
}

var _ Pipeline = (*at.Pipeline)(nil)
