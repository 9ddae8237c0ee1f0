package inventory

// Inventory is the document returned by `aws ec2 describe-instances`.
type Inventory struct {
	Reservations []Reservation `json:"Reservations"`
}

// Reservation is a batch of instances launched together.
type Reservation struct {
	Instances []RawInstance `json:"Instances"`
}

// RawInstance is a single instance record as the provider returns it.
type RawInstance struct {
	InstanceID      string  `json:"InstanceId"`
	State           State   `json:"State"`
	PublicIPAddress *string `json:"PublicIpAddress,omitempty"`
	PlatformDetails string  `json:"PlatformDetails"`
	InstanceType    string  `json:"InstanceType"`
	KeyName         string  `json:"KeyName"`
	Tags            []Tag   `json:"Tags"`
}

// State holds the instance state code. Only the low byte is meaningful;
// the high byte is reserved by EC2 for internal use.
type State struct {
	Code int    `json:"Code"`
	Name string `json:"Name,omitempty"`
}

// Tag is a key/value pair attached to an instance.
type Tag struct {
	Key   string `json:"Key"`
	Value string `json:"Value"`
}

// EC2 instance state codes (low byte).
const (
	StatePending      = 0
	StateRunning      = 16
	StateShuttingDown = 32
	StateTerminated   = 48
	StateStopping     = 64
	StateStopped      = 80
)

// Terminated reports whether the instance is gone for good.
func (s State) Terminated() bool {
	return s.Code&0xff == StateTerminated
}

// Count returns the total number of raw instance records.
func (inv *Inventory) Count() int {
	if inv == nil {
		return 0
	}
	n := 0
	for _, r := range inv.Reservations {
		n += len(r.Instances)
	}
	return n
}

// Instance is the display-ready view of an instance shown in the table.
type Instance struct {
	Index   int    `json:"index" yaml:"index"`
	ID      string `json:"id" yaml:"id"`
	Name    string `json:"name" yaml:"name"`
	Type    string `json:"type" yaml:"type"`
	Address string `json:"address" yaml:"address"`
	Key     string `json:"key" yaml:"key"`

	// KeyName is the bare key pair name, without the .pem suffix.
	KeyName string `json:"-" yaml:"-"`
	// Named is false when Name is the "N/A" placeholder.
	Named bool `json:"-" yaml:"-"`
}
