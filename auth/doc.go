// Package auth authenticates feedbackd callers.
//
// Subpackages:
//
//   - auth/jwt       HMAC-signed access tokens with a roles claim
//   - auth/password  bcrypt and argon2id hashing for the user table
//   - auth/authctx   request-context propagation of verified claims
//
// The top-level package offers the TokenValidator contract consumed by the
// HTTP middleware and an Authenticator that backs POST /api/auth/login.
//
//	auth:
//	  enabled: true
//	  jwt:
//	    secret: "change-me"
//	    access_token_ttl: "1h"
//	  users:
//	    - username: analyst
//	      password_hash: "$2a$12$..."
//	      roles: [reviewer]
package auth
