// Package stats derives the admin dashboard counters from lists that
// were already fetched for the page. There are no dedicated queries and
// no caching beyond the parent fetch.
package stats

import (
	"github.com/agendavida/clinic-agenda/internal/appointment"
	"github.com/agendavida/clinic-agenda/internal/user"
)

type Summary struct {
	TotalAppointments    int
	PendingAppointments  int
	ApprovedAppointments int
	StaffAccounts        int
}

func Compute(appointments []appointment.Appointment, users []user.User) Summary {
	var s Summary
	s.TotalAppointments = len(appointments)
	for _, a := range appointments {
		switch a.Status {
		case appointment.StatusPendente:
			s.PendingAppointments++
		case appointment.StatusAprovada:
			s.ApprovedAppointments++
		}
	}
	for _, u := range users {
		if u.UserType == user.TypeFuncionario {
			s.StaffAccounts++
		}
	}
	return s
}
