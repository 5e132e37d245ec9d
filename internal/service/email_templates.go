package service

import "fmt"

func otpEmailTemplate(code string, purpose OTPPurpose, appName string) (string, string) {
	var subject, intro, action string
	if purpose == OTPPurposeVerification {
		subject = fmt.Sprintf("Verify Your Email - %s", appName)
		intro = "Welcome! Please verify your email address to complete your registration."
		action = "verify your account"
	} else {
		subject = fmt.Sprintf("Login Verification - %s", appName)
		intro = "You requested to log in to your account. Use the code below to continue."
		action = "complete your login"
	}

	body := fmt.Sprintf(`%s

Your code: %s

It is valid for 10 minutes. Enter this code in the application to %s.

If you didn't request this code, please ignore this email.

Best,
The %s Team`, intro, code, action, appName)

	return subject, body
}
