// Package utils holds small parsing helpers shared by the HTTP handlers and
// the CLI, such as turning operator input into a stack limit.
package utils
