package utils

import (
	"fmt"
	"strings"
)

// Client contact details are masked on the partner side until an appointment
// is confirmed, so garages cannot bypass the platform before committing.

func MaskName(string) string {
	return "Client : ******"
}

func MaskPhone(string) string {
	return "** ** ** ** **"
}

func MaskEmail(email string) string {
	at := strings.IndexByte(email, '@')
	if at < 0 {
		return "******"
	}
	return "******@******.**"
}

// AppointmentReference is the opaque booking reference shown to partners in
// place of client identity while an appointment is still pending.
func AppointmentReference(id int) string {
	return fmt.Sprintf("VTR-9F2K%d", id)
}
