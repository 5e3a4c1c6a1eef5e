// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Sources

Each value is taken from the first source that sets it:

 1. CLI flags
 2. Environment variables (a .env file is loaded first when present)
 3. TOML config file (-c or CONFIG_FILE)
 4. Built-in defaults

# CLI Flags

	-p               Server port (PORT, default 3318)
	-d               Database URL (DATABASE_URL)
	-t               Database type: sqlite or postgres (DATABASE_TYPE, default sqlite)
	-session-secret  Session signing secret (SESSION_SECRET, required)
	-admin           Notification recipient (ADMIN)
	-uploads         Image directory (UPLOAD_DIR, default static/imgs)
	-log-level       debug, info, warn, error (LOG_LEVEL)
	-c               TOML config file
	-env-file        .env file (default .env)

Mail settings come from MAIL_SERVER, MAIL_PORT, MAIL_USERNAME, MAIL_PASSWORD,
MAIL_SENDER and MAIL_SUBJECT_PREFIX, or the [mail] table of the config file.
MAX_UPLOAD accepts human sizes such as "10 MB".

# Validation

ParseFlags returns an error when:

  - SESSION_SECRET is missing
  - DATABASE_TYPE is postgres and no DATABASE_URL is given
  - PORT, MAIL_PORT or MAX_UPLOAD cannot be parsed
*/
package cliparse
