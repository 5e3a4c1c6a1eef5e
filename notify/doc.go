// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package notify renders and delivers admin notification mail.

# Delivery Semantics

Delivery is best effort and at most once. Request handlers call

	err := dispatcher.SendEmail(cfg.Admin, "New Song", "new_song", data)

which renders the text and HTML templates and queues the message without
waiting. A single worker drains the queue, paced by a token bucket. When the
queue is full the message is dropped with a warning; a failed send is logged
and never retried. Failures are not reported back to the request.

# Senders

NewSender picks an SMTP relay when MAIL_USERNAME is set and a log-only
sender otherwise, so development setups need no mail account.

# Templates

Templates live in templates/ as name.txt and name.html pairs and are
embedded at build time. The configured subject prefix is prepended to
every subject.
*/
package notify
