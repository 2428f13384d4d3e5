/*
 * MIT License
 *
 * Copyright (c) 2024 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package enrich

import (
	"bytes"
	"encoding/binary"
	"unicode/utf16"
)

const (
	ntlmAvNetBIOSComputer = 1
	ntlmAvNetBIOSDomain   = 2
	ntlmAvDNSComputer     = 3
	ntlmAvDNSDomain       = 4
	ntlmAvEOL             = 0
)

var ntlmSignature = []byte("NTLMSSP\x00")

// ParseNtlmChallenge decodes an NTLM Type-2 (Challenge) message's target-info
// AV-pairs into a set of hints keyed "ntlm_<field>". b may be the raw wire
// bytes of an SMTP AUTH NTLM base64-decoded response, or an RDP CredSSP
// NTLM Challenge payload with the NTLMSSP blob embedded somewhere inside it.
func ParseNtlmChallenge(b []byte) map[string]string {
	idx := bytes.Index(b, ntlmSignature)
	if idx < 0 {
		return nil
	}
	msg := b[idx:]
	if len(msg) < 12 || binary.LittleEndian.Uint32(msg[8:12]) != 2 {
		return nil
	}
	if len(msg) < 48 {
		return nil
	}

	targetInfoLen := binary.LittleEndian.Uint16(msg[40:42])
	targetInfoOffset := binary.LittleEndian.Uint32(msg[44:48])
	if targetInfoLen == 0 || int(targetInfoOffset)+int(targetInfoLen) > len(msg) {
		return nil
	}
	avPairs := msg[targetInfoOffset : targetInfoOffset+uint32(targetInfoLen)]

	hints := map[string]string{}
	i := 0
	for i+4 <= len(avPairs) {
		avID := binary.LittleEndian.Uint16(avPairs[i : i+2])
		avLen := binary.LittleEndian.Uint16(avPairs[i+2 : i+4])
		i += 4
		if avID == ntlmAvEOL || i+int(avLen) > len(avPairs) {
			break
		}
		value := decodeUTF16LE(avPairs[i : i+int(avLen)])
		i += int(avLen)

		switch avID {
		case ntlmAvNetBIOSComputer:
			hints["ntlm_netbios_computer"] = value
		case ntlmAvNetBIOSDomain:
			hints["ntlm_netbios_domain"] = value
		case ntlmAvDNSComputer:
			hints["ntlm_dns_computer"] = value
		case ntlmAvDNSDomain:
			hints["ntlm_dns_domain"] = value
		}
	}
	if len(hints) == 0 {
		return nil
	}
	return hints
}

func decodeUTF16LE(b []byte) string {
	u16 := make([]uint16, len(b)/2)
	for i := range u16 {
		u16[i] = binary.LittleEndian.Uint16(b[i*2 : i*2+2])
	}
	return string(utf16.Decode(u16))
}
