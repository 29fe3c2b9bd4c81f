/*
Package req parses query parameters of an HTTP request into structs.

Fields are matched by "schema" struct tags and checked against "validate" struct tags.
Failures are translated to cryptodash sentinel errors:
ErrNotValid (as ValidationErrors) when the data does not meet the rules,
ErrBadAny or ErrNotImplemented when the calling code is at fault.
*/
package req
