// Package spectre implements a small language for math written the way it is
// written on paper.
//
// Numbers next to each other multiply: "2 3" is 6, "2x" is twice x, and
// "3(x+1)" is what it looks like. Unicode glyphs are operators: "√x", "∛x",
// and "∜x" are roots that bind tighter than powers, so "√4^2" is 4; "⌊x⌋" and
// "⌈x⌉" are floor and ceiling; "|x|" is the absolute value; "x°" converts
// degrees to radians; and "5!" is 120. Superscripts are exponents: "x²" is
// "x^2" and "2⁽ⁿ⁺¹⁾" is "2^(n+1)". "-2^2" is "-(2^2)", and "2^3^2" is
// "2^(3^2)".
//
// Values are 32-bit integers, 64-bit reals, complex numbers, booleans, and
// functions. Arithmetic promotes integers to reals and reals to complex
// numbers as needed. The built-in i is the imaginary unit, so "1 + 2i" is a
// complex number.
//
// Programs are statements separated by newlines or semicolons:
//
//	f(x) = x^2 + 1
//	n = 0
//	while n < 3 { n = n + 1 }
//	if f(n) > 5 { print(f(n)) } else { 0 }
//
// A function sees only its parameters and the built-ins, never the variables
// of the program that calls it. Multiplying, dividing, or raising a function
// by a number gives a new function: after the program above, "g = 2f" makes
// g(3) equal 20.
//
// Errors from every stage implement InputError, which locates the offending
// source text. Diagnose extracts the location and descriptions for display.
package spectre
