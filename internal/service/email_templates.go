package service

import (
	"fmt"
	"strings"

	"github.com/slatesocial/site/internal/model"
)

func registrationConfirmationTemplate(name, gym, siteURL, siteName string) (string, string) {
	subject := fmt.Sprintf("You're on the %s beta list", siteName)
	body := fmt.Sprintf(`Hi %s,

Thanks for registering %s for the %s beta.

We're onboarding gyms in small groups so every community gets a proper setup. We'll reach out as soon as a spot opens for you.

In the meantime, our blog has ideas for growing your gym's community:
%s/blog

Climb on,
The %s Team`, firstName(name), gym, siteName, strings.TrimSuffix(siteURL, "/"), siteName)

	return subject, body
}

func registrationNotificationTemplate(reg *model.Registration, siteName string) (string, string) {
	subject := fmt.Sprintf("[%s] New beta registration: %s", siteName, reg.GymName)

	message := strings.TrimSpace(reg.Message)
	if message == "" {
		message = "(none)"
	}

	body := fmt.Sprintf(`New beta registration

Name:  %s
Gym:   %s
Email: %s
Date:  %s

Biggest social challenges:
%s`, reg.FullName, reg.GymName, reg.Email, reg.CreatedAt.UTC().Format("2006-01-02 15:04 MST"), message)

	return subject, body
}

func firstName(full string) string {
	fields := strings.Fields(full)
	if len(fields) == 0 {
		return "there"
	}
	return fields[0]
}
