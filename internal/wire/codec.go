package wire

import "encoding/json"

func encodeJSON(env Envelope) ([]byte, error) {
	return json.Marshal(env)
}
