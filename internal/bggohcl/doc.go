// Package bggohcl holds small helpers on top of hashicorp/hcl and go-cty
// shared by the HCL loader: block lookup and conversion of evaluated
// expressions into native Go values.
package bggohcl
