// Package fib computes Fibonacci numbers on decimal big integers and
// searches for the first term with a given number of digits.
//
// Every term is produced by repeated addition over a two-term window; no
// recursion is involved, so F(n) costs n additions and constant extra
// memory beyond the two live terms.
package fib
