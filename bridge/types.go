// SPDX-License-Identifier: Apache-2.0

package bridge

import "fmt"

// Kind selects the transport used to reach the target.
type Kind uint8

const (
	// USB is the default bridge.
	USB Kind = iota
	UART
)

func (k Kind) String() string {
	switch k {
	case USB:
		return "usb"
	case UART:
		return "uart"
	default:
		return fmt.Sprintf("bridge(%d)", uint8(k))
	}
}

// USBID is a representation of a vendor or product ID under the USB standard (see gousb.ID)
type USBID uint16

func (id USBID) String() string {
	return fmt.Sprintf("%04x", uint16(id))
}
