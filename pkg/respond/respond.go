package respond

import (
	"encoding/json"
	"fmt"
	"io"
)

func JSON(w io.Writer, data interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func Line(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, format+"\n", args...)
}

func Error(w io.Writer, message string) {
	Line(w, "Error: %s", message)
}
