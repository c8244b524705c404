package export

import (
	"encoding/json"
	"io"
)

func WriteJSON(w io.Writer, pd *PolyData) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(pd)
}
