package sms

import "time"

// Message is a received text message. Multi-part messages are returned once
// every part has arrived, with the sender and timestamp of the first part
// seen.
type Message struct {
	Sender    string    `json:"sender"`
	Timestamp time.Time `json:"time_stamp"`
	Contents  string    `json:"contents"`
}

// SendResult acknowledges a message accepted by the network.
type SendResult struct {
	// Reference is the message reference assigned by the modem.
	Reference int `json:"reference"`
}
