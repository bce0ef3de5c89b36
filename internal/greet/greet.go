// Package greet provides the service greeting
package greet

// Hello returns the canonical greeting
func Hello() string { return "Hello, World!" }
