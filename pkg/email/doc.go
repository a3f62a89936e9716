// Package email provides transactional email delivery behind a small
// EmailSender interface.
//
// Two implementations are included:
//
//   - NewPostmarkClient sends through the Postmark transactional API
//     (github.com/mrz1836/postmark).
//   - NewDevSender writes each email as an HTML file plus JSON metadata to a
//     local directory, for development without a Postmark account.
//
// Queue handlers depend only on the EmailSender interface, so swapping the
// implementation is a wiring change in main.
//
// # Usage
//
//	sender, err := email.NewPostmarkClient(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	err = sender.SendEmail(ctx, email.SendEmailParams{
//	    SendTo:   "user@example.com",
//	    Subject:  "Welcome!",
//	    BodyHTML: "<h1>Hello</h1>",
//	    Tag:      "welcome",
//	})
package email
