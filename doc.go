// Package accounts implements the user-account lifecycle: registration with
// out-of-band activation codes, password login, and stateless token sessions.
//
// Token model:
//   - Three token kinds (activation, access, refresh) are signed HS256 against
//     independent secrets with independent expirations. There is no revocation
//     list; a token stays valid until its own expiry.
//   - Activation tokens carry the full pending registration plus a numeric
//     one-time code, so nothing is persisted until the code is redeemed.
//
// Lifecycle:
//   - Manager orchestrates Register, Activate, and Login against a Bun-backed
//     Users repository. Login reports bad credentials as a value on
//     LoginResult rather than an error; every other failure is raised as a
//     categorized error.
//
// Session guard:
//   - middleware/guard authenticates requests by the accesstoken/refreshtoken
//     header pair and rotates both tokens on every guarded call, exposing the
//     outcome to handlers as an explicit GuardResult.
package accounts
