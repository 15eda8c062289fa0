// Package handlers turns command failures into terminal output and log
// records. Errors may carry a numeric code (see WithCode) which selects the
// severity they are logged at.
package handlers
