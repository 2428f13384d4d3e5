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

package handlers

import (
	"github.com/sabouaram/bannergrab/model"
)

type ntpClient struct{}

func (n *ntpClient) Name() string          { return "ntp" }
func (n *ntpClient) Matches(p uint16) bool { return p == 123 }

// ntpClientPacket is the 48-byte NTP client-mode request: LI=0, VN=3,
// Mode=3 packed into the first byte, every other field zero.
var ntpClientPacket = func() []byte {
	p := make([]byte, 48)
	p[0] = 0x1B
	return p
}()

func (n *ntpClient) Execute(target model.Target, cfg *model.Config) (model.ReadResult, error) {
	return udpRoundTrip(target, cfg, ntpClientPacket)
}
