package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMasking(t *testing.T) {
	assert.Equal(t, "Client : ******", MaskName("Jean Dupont"))
	assert.Equal(t, "** ** ** ** **", MaskPhone("+33612345678"))
	assert.Equal(t, "******@******.**", MaskEmail("jean.dupont@example.fr"))
	assert.Equal(t, "******", MaskEmail("not-an-email"))
}

func TestAppointmentReference(t *testing.T) {
	assert.Equal(t, "VTR-9F2K42", AppointmentReference(42))
	assert.NotEqual(t, AppointmentReference(1), AppointmentReference(2))
}
