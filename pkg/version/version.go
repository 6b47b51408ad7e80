package version

import (
	"encoding/json"
	"runtime/debug"
)

type Info struct {
	Commit string `json:"commit"`
	Time   string `json:"time"`
}

// Read returns the VCS revision and commit time stamped into the binary.
func Read() Info {
	v := Info{}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return v
	}
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			v.Commit = setting.Value
		case "vcs.time":
			v.Time = setting.Value
		}
	}
	return v
}

func (i Info) String() string {
	b, err := json.Marshal(&i)
	if err != nil {
		return err.Error()
	}
	return string(b)
}
