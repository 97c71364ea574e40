package service

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/yamensam88/vitrio/internal/db"
	"github.com/yamensam88/vitrio/internal/entities"
)

type SenderService struct {
}

func NewSenderService() *SenderService {
	return &SenderService{}
}

// SendAppointmentEmail notifies the customer about the current state of their
// appointment. Delivery is fire-and-forget: failures are logged, never
// propagated to the booking flow.
func (s *SenderService) SendAppointmentEmail(appointment *db.Appointment, garage *db.Garage) {
	parisLoc, errLoc := time.LoadLocation("Europe/Paris")
	if errLoc != nil {
		parisLoc = time.FixedZone("CET", 1*60*60)
	}

	emailData := entities.AppointmentEmailData{
		ClientName:    appointment.ClientName,
		GarageName:    garage.Name,
		GarageAddress: garage.Address,
		Vehicle:       appointment.Vehicle,
		DateFormatted: appointment.Date.In(parisLoc).Format("02/01/2006 à 15:04"),
		Offers:        appointment.Offers,
		Amount:        appointment.Amount,
		Status:        appointment.Status,
		CurrentYear:   time.Now().In(parisLoc).Year(),
	}

	emailSubject := fmt.Sprintf("Votre rendez-vous Vitrio est %s – %s", appointment.Status, garage.Name)
	plainTextBody := fmt.Sprintf(
		"Bonjour %s,\n\nVotre rendez-vous chez %s est %s.\n\n"+
			"Détails du rendez-vous :\n"+
			"Garage : %s (%s)\n"+
			"Véhicule : %s\n"+
			"Date : %s\n"+
			"Montant : %.2f €\n\n"+
			"Merci d'avoir choisi Vitrio.\n\n"+
			"Vitrio. Tous droits réservés.",
		emailData.ClientName, garage.Name, appointment.Status,
		garage.Name, garage.Address, emailData.Vehicle,
		emailData.DateFormatted, appointment.Amount,
	)

	tmplPath := filepath.Join("internal", "templates", "appointment_email.html")
	var htmlBody string
	tmpl, err := template.ParseFiles(tmplPath)
	if err != nil {
		log.Printf("WARNING: could not parse email template (%s): %v", tmplPath, err)
	} else {
		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, emailData); err != nil {
			log.Printf("WARNING: could not render email template for appointment #%d: %v", appointment.ID, err)
		}
		htmlBody = buf.String()
	}

	go func(toEmail, toName, subject, plainBody, htmlBodyContent string) {
		if err := SendEmailWithSendGrid(toEmail, toName, subject, plainBody, htmlBodyContent); err != nil {
			log.Printf("WARNING (async): email delivery failed for appointment #%d: %v", appointment.ID, err)
		}
	}(appointment.Email, appointment.ClientName, emailSubject, plainTextBody, htmlBody)
}

func (s *SenderService) SendAppointmentSMS(appointment *db.Appointment, garage *db.Garage) {
	parisLoc, errLoc := time.LoadLocation("Europe/Paris")
	if errLoc != nil {
		parisLoc = time.FixedZone("CET", 1*60*60)
	}

	smsMessage := fmt.Sprintf("Vitrio : votre RDV chez %s est %s.\nDate : %s.\nPlus de détails dans votre email.",
		garage.Name, appointment.Status,
		appointment.Date.In(parisLoc).Format("02/01 15:04"),
	)

	go func(phone, message string) {
		if err := SendSMS(phone, message); err != nil {
			log.Printf("WARNING (async): SMS delivery failed for appointment #%d to %s: %v", appointment.ID, phone, err)
		}
	}(appointment.Phone, smsMessage)
}

// SendAccessCodeEmail delivers the partner login code issued on approval.
func (s *SenderService) SendAccessCodeEmail(registration *db.AdminGarage, code string) {
	loginURL := os.Getenv("PARTNER_LOGIN_URL")
	if loginURL == "" {
		loginURL = "https://vitrio.fr/pro/login"
	}

	subject := "Votre inscription Vitrio est validée"
	plainTextBody := fmt.Sprintf(
		"Bonjour,\n\nVotre inscription du garage %s a été validée.\n\n"+
			"Connectez-vous à votre espace partenaire avec le code : %s\n%s\n\n"+
			"Vitrio. Tous droits réservés.",
		registration.Name, code, loginURL,
	)

	go func(toEmail, toName string) {
		if err := SendEmailWithSendGrid(toEmail, toName, subject, plainTextBody, ""); err != nil {
			log.Printf("WARNING (async): access code email failed for garage '%s': %v", registration.Name, err)
		}
	}(registration.Email, registration.Name)
}
