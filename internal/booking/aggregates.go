package booking

// CommissionPerAppointment is the flat platform fee, in EUR excl. tax, owed by
// a garage for each confirmed appointment (CGV art. 4.1).
const CommissionPerAppointment = 55.0

// ConfirmedCount counts appointments that have been confirmed, including those
// that have since been completed.
func ConfirmedCount(appointments []Appointment) int {
	count := 0
	for _, a := range appointments {
		if a.Status == StatusConfirmed || a.Status == StatusCompleted {
			count++
		}
	}
	return count
}

// CommissionTotal is the platform fee owed for a collection of appointments.
// It is recomputed from scratch on every call; collections are small and a
// running counter would have to survive restarts anyway.
func CommissionTotal(appointments []Appointment) float64 {
	return float64(ConfirmedCount(appointments)) * CommissionPerAppointment
}

// Revenue sums the amounts a garage has earned: completed jobs, plus confirmed
// jobs whose billing has already been triggered. Billing fires at confirmation
// time, so confirmed-and-billed money is committed even before the job is done.
func Revenue(appointments []Appointment) float64 {
	var total float64
	for _, a := range appointments {
		if a.Status == StatusCompleted || (a.Status == StatusConfirmed && a.BillingTriggered) {
			total += a.Amount
		}
	}
	return total
}
