package at_test

import (
	"bufio"
	"slices"
	"strings"
	"testing"

	"i4.energy/across/gsmradio/at"
)

func TestScanCR(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "Simple AT command response",
			input:    "AT+CSQ?\r\r\n+CSQ: 15,99\r\n\r\nOK\r\n",
			expected: []string{"AT+CSQ?", "", "\n+CSQ: 15,99", "\n", "\nOK", "\n"},
		},
		{
			name:     "Numeric result codes",
			input:    "+CMGL: 1,1,,23\r\n0791\r\n0\r",
			expected: []string{"+CMGL: 1,1,,23", "\n0791", "\n0"},
		},
		{
			name:     "SMS prompt without terminator",
			input:    "\r\n> ",
			expected: []string{"", "\n> "},
		},
		{
			name:     "Multiple URCs",
			input:    "\r\n+CMTI: \"SM\",1\r\n+CMTI: \"SM\",2\r\nRING\r",
			expected: []string{"", "\n+CMTI: \"SM\",1", "\n+CMTI: \"SM\",2", "\nRING"},
		},
		{
			name:     "Response cut off mid-stream at EOF",
			input:    "\r\n+CSQ: 15,99\r\nOK\r\n+CMTI: \"SM\",1",
			expected: []string{"", "\n+CSQ: 15,99", "\nOK", "\n+CMTI: \"SM\",1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var tokens []string
			scanner := bufio.NewScanner(strings.NewReader(tt.input))
			scanner.Split(at.ScanCR)

			for scanner.Scan() {
				tokens = append(tokens, scanner.Text())
			}

			if err := scanner.Err(); err != nil {
				t.Fatalf("Scanner error: %v", err)
			}

			if !slices.Equal(tokens, tt.expected) {
				t.Fatalf("Expected %q, got %q", tt.expected, tokens)
			}
		})
	}
}

func TestIsContinuation(t *testing.T) {
	if !at.IsContinuation("\nOK") {
		t.Error("line feed prefixed line should continue the reply")
	}
	if at.IsContinuation("AT+CMGL=4") {
		t.Error("echoed command should start a new reply")
	}
}

func TestLines(t *testing.T) {
	got := at.Lines("AT+CSQ?\n+CSQ: 15,99\n\n  \nOK\n")
	want := []string{"AT+CSQ?", "+CSQ: 15,99", "OK"}
	if !slices.Equal(got, want) {
		t.Errorf("Lines() = %q, want %q", got, want)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected at.ResponseType
	}{
		// Final responses
		{name: "OK response", input: "OK", expected: at.TypeFinal},
		{name: "ERROR response", input: "ERROR", expected: at.TypeFinal},
		{name: "Numeric OK", input: "0", expected: at.TypeFinal},
		{name: "Numeric ERROR", input: "4", expected: at.TypeFinal},
		{name: "CME Error", input: "+CME ERROR: 30", expected: at.TypeFinal},
		{name: "CMS Error", input: "+CMS ERROR: 500", expected: at.TypeFinal},
		{name: "NO CARRIER", input: "NO CARRIER", expected: at.TypeFinal},

		// URCs
		{name: "New message URC", input: "+CMTI: \"SM\",1", expected: at.TypeURC},
		{name: "Incoming call URC", input: "RING", expected: at.TypeURC},

		// Data responses
		{name: "AT command", input: "AT+CSQ", expected: at.TypeData},
		{name: "Signal quality response", input: "+CSQ: 15,99", expected: at.TypeData},
		{name: "SMS send result", input: "+CMGS: 123", expected: at.TypeData},
		{name: "PDU line", input: "07911326040000F0040B911346610089F6", expected: at.TypeData},
		{name: "Unknown numeric code", input: "5", expected: at.TypeData},

		// Prompt
		{name: "SMS input prompt", input: "> ", expected: at.TypePrompt},
		{name: "Trimmed SMS input prompt", input: ">", expected: at.TypePrompt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := at.Classify(tt.input)
			if result != tt.expected {
				t.Errorf("Expected %v, got %v for input %q", tt.expected, result, tt.input)
			}
		})
	}
}
