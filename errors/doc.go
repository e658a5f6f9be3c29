// Package errors provides the error taxonomy of the paygate SDK.
// Every failure surfaced by the SDK is an *AppError carrying a machine-readable
// code, a retryable hint and, for remote calls, the HTTP status that caused it.
package errors
