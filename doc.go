/*
Package scn implements structured, format-string-driven scanning: the
read-side counterpart of a type-safe formatted-print library.

Scan drives a replacement-field format string ("{} {:d} {:[a-z]}") against
a source — a string, a []byte, or an io.Reader — filling the destinations
passed by pointer, in order:

	var name string
	var age int
	res, err := scn.Scan("Bob 24", "{} {}", &name, &age)

ScanValue is a convenience for the common case of a single, default-
formatted value:

	n, res, err := scn.ScanValue[int]("42")

ScanLocalized threads a Locale through the same machinery, so that the
decimal point, thousands separator, grouping, and true/false spellings
follow a locale convention instead of the default "C"-like one:

	res, err := scn.ScanLocalized(scn.LocaleForTag(language.German), "1.234,5", "{:Ld}", &n)

Input reads from the process's standard input, holding a process-wide
stdin lock owned by this package for its duration, so concurrent calls to
Input do not interleave their reads.

# Format strings

A replacement field is "{[arg_id][:spec]}". arg_id is either omitted on
every field (automatic indexing) or given on every field (explicit
indexing); the two styles cannot be mixed within one format string. spec is
"[[fill]align][width]['L'][type]": fill/align borrow the familiar
"<", ">", "^" alignment letters; width bounds a string read by display
column, not just code-point count; 'L' requests locale-aware reading of
whatever numeric or boolean field follows it; type selects among the
integer bases ('b','o','d','x','i','u', or an arbitrary "r<nn>"), the
float forms ('f','e','g','a'), a scanset ("[...]"), a regex ("/.../flags"),
a character ('c'/'C'), or a pointer ('p'). "{{" and "}}" escape literal
braces.

# Errors

Every fallible operation returns an error carrying one of a small, flat set
of codes (see Code) rather than the general unstructured errors.New style:
callers that want to distinguish "ran out of input" from "the format
string itself was wrong" can switch on the code without parsing message
text.
*/
package scn
