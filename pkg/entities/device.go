package entities

// Device identifies the maceration tank towards the KNoT cloud.
type Device struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	SensorID int    `yaml:"sensorId"`
}

type Data struct {
	SensorID  int         `json:"sensorId"`
	Value     interface{} `json:"value"`
	TimeStamp interface{} `json:"timestamp"`
}
