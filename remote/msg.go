package remote

import "fmt"

// Message definitions of the NATS wire protocol. All payloads are JSON.
// Requests are served on "audiohal.<server>.<operation>"; change
// notifications are published on "audiohal.<server>.events".

const subjectPrefix = "audiohal"

func subject(server, operation string) string {
	return fmt.Sprintf("%s.%s.%s", subjectPrefix, server, operation)
}

// operations
const (
	opEnumerate = "enumerate"
	opGet       = "get"
	opSet       = "set"
	opSubscribe = "subscribe"
	opPing      = "ping"
	opEvents    = "events"
)

// Value carries one typed property value. Exactly one field is set;
// Bytes is the fallback for types the protocol does not model.
type Value struct {
	Uint32  *uint32  `json:"uint32,omitempty"`
	Float32 *float32 `json:"float32,omitempty"`
	Float64 *float64 `json:"float64,omitempty"`
	String  *string  `json:"string,omitempty"`
	Bytes   []byte   `json:"bytes,omitempty"`
}

// Address names a property in wire form: four-char strings for
// selector and scope plus the element number.
type Address struct {
	Selector string `json:"selector"`
	Scope    string `json:"scope"`
	Element  uint32 `json:"element"`
}

// DeviceInfo describes one device in an enumerate response.
type DeviceInfo struct {
	ID         uint32   `json:"id"`
	Name       string   `json:"name,omitempty"`
	UID        string   `json:"uid,omitempty"`
	Transport  string   `json:"transport,omitempty"`
	SampleRate *float64 `json:"sampleRate,omitempty"`
}

// EnumerateResponse is the reply to an enumerate request. The request
// has no payload.
type EnumerateResponse struct {
	Devices       []DeviceInfo `json:"devices"`
	DefaultInput  *uint32      `json:"defaultInput,omitempty"`
	DefaultOutput *uint32      `json:"defaultOutput,omitempty"`
	Error         string       `json:"error,omitempty"`
}

// GetRequest reads one property.
type GetRequest struct {
	Object  uint32  `json:"object"`
	Address Address `json:"address"`
	Type    string  `json:"type"` // uint32, float32, float64, string, bytes
}

// GetResponse is the reply to a GetRequest.
type GetResponse struct {
	Value Value  `json:"value"`
	Error string `json:"error,omitempty"`
}

// SetRequest writes one property.
type SetRequest struct {
	Object  uint32  `json:"object"`
	Address Address `json:"address"`
	Value   Value   `json:"value"`
}

// SetResponse is the reply to a SetRequest.
type SetResponse struct {
	Error string `json:"error,omitempty"`
}

// SubscribeRequest asks the server to watch one property and publish
// its changes on the events subject.
type SubscribeRequest struct {
	Object  uint32  `json:"object"`
	Address Address `json:"address"`
}

// SubscribeResponse is the reply to a SubscribeRequest.
type SubscribeResponse struct {
	Subject string `json:"subject,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ChangeNotification is published on the events subject whenever a
// watched property changes.
type ChangeNotification struct {
	Object    uint32    `json:"object"`
	Addresses []Address `json:"addresses"`
}

// PingPong is the ping payload; the server echoes it unchanged.
type PingPong struct {
	Ping int64 `json:"ping"`
}
