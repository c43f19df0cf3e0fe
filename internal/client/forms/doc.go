// Package forms holds the input logic of the CLI screens: the credential
// form for sign-in and sign-up and the entry editor. Both report outcomes
// as Toasts that the CLI renders.
package forms
