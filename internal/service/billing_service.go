package service

import (
	"fmt"
	"log"
	"os"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"

	"github.com/yamensam88/vitrio/internal/booking"
	"github.com/yamensam88/vitrio/internal/repository"
)

// BillingService turns billing events into Stripe checkout sessions for the
// flat platform fee. The core engine stays fire-and-forget: a failed charge is
// logged and retried out of band, never blocks the confirmation.
type BillingService struct {
	AppointmentRepo *repository.AppointmentRepository
	AdminGarageRepo *repository.AdminGarageRepository
}

func NewBillingService(appointmentRepo *repository.AppointmentRepository, adminGarageRepo *repository.AdminGarageRepository) *BillingService {
	return &BillingService{AppointmentRepo: appointmentRepo, AdminGarageRepo: adminGarageRepo}
}

func (s *BillingService) ChargeCommission(event booking.BillingEvent, garageID string) error {
	registration, err := s.AdminGarageRepo.GetByGarageID(garageID)
	if err != nil {
		return fmt.Errorf("no registration found for garage '%s': %w", garageID, err)
	}

	amountCents := int64(booking.CommissionPerAppointment * 100)
	description := fmt.Sprintf("Commission Vitrio – RDV #%d", event.AppointmentID)

	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String("eur"),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(description),
					},
					UnitAmount: stripe.Int64(amountCents),
				},
				Quantity: stripe.Int64(1),
			},
		},
		Mode:          stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:    stripe.String(os.Getenv("BILLING_SUCCESS_URL")),
		CancelURL:     stripe.String(os.Getenv("BILLING_CANCEL_URL")),
		CustomerEmail: stripe.String(registration.Email),
	}

	sess, err := session.New(params)
	if err != nil {
		return fmt.Errorf("error creating commission checkout session: %w", err)
	}
	if err := s.AppointmentRepo.SetCommissionSession(event.AppointmentID, sess.ID); err != nil {
		return err
	}
	return nil
}

// SettleCommission is driven by the Stripe webhook when a commission checkout
// completes.
func (s *BillingService) SettleCommission(sessionID string) error {
	if err := s.AppointmentRepo.MarkCommissionPaid(sessionID); err != nil {
		return err
	}
	if a, err := s.AppointmentRepo.GetByCommissionSession(sessionID); err == nil {
		log.Printf("Commission paid for appointment #%d (garage %s)", a.ID, a.GarageID)
	}
	return nil
}
