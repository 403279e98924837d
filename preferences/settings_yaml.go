package preferences

import (
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/benjamonnguyen/pomomo-timer"
)

// yamlSettings holds durations as Go duration strings such as "1m30s".
// Absent fields are nil.
type yamlSettings struct {
	Work              *string `yaml:"work,omitempty"`
	ShortBreak        *string `yaml:"short_break,omitempty"`
	LongBreak         *string `yaml:"long_break,omitempty"`
	LongBreakInterval *int    `yaml:"long_break_interval,omitempty"`
}

func WriteSettingsYAML(w io.Writer, settings pomomo.Settings) error {
	str := func(d time.Duration) *string {
		s := d.String()
		return &s
	}
	data, err := yaml.Marshal(yamlSettings{
		Work:              str(settings.Work),
		ShortBreak:        str(settings.ShortBreak),
		LongBreak:         str(settings.LongBreak),
		LongBreakInterval: &settings.LongBreakInterval,
	})
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// ReadSettingsYAML applies the fields present in r on top of base. The
// result is not validated, so present zero values reach validation.
func ReadSettingsYAML(r io.Reader, base pomomo.Settings) (pomomo.Settings, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return base, fmt.Errorf("read settings yaml: %w", err)
	}
	var fileData yamlSettings
	if err := yaml.Unmarshal(data, &fileData); err != nil {
		return base, fmt.Errorf("parse settings yaml: %w", err)
	}

	settings := base
	fields := []struct {
		name string
		src  *string
		dst  *time.Duration
	}{
		{"work", fileData.Work, &settings.Work},
		{"short_break", fileData.ShortBreak, &settings.ShortBreak},
		{"long_break", fileData.LongBreak, &settings.LongBreak},
	}
	for _, f := range fields {
		if f.src == nil {
			continue
		}
		d, err := time.ParseDuration(*f.src)
		if err != nil {
			return base, fmt.Errorf("parse settings yaml: %s: %w", f.name, err)
		}
		*f.dst = d
	}
	if fileData.LongBreakInterval != nil {
		settings.LongBreakInterval = *fileData.LongBreakInterval
	}
	return settings, nil
}
