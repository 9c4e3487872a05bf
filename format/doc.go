// Package format names the text formats documents are read and written in.
package format
