// Package sanitizer provides input normalization for client dossier data.
//
// All normalization functions are idempotent - applying them multiple times
// produces the same result. Invalid input is handled gracefully, typically by
// returning an empty string rather than an error; validation of the result is
// the validator layer's job.
//
// Normalization includes:
//   - Names and free text: collapse internal whitespace, trim ends
//   - Phone numbers: strip formatting characters down to E.164 (+[country][number])
//   - Countries: trim and title-case
package sanitizer
