package application

import (
	"bytes"
	"testing"

	"github.com/diwise/home-activity-sync/internal/pkg/application/aggregation"
	"github.com/diwise/home-activity-sync/internal/pkg/application/rooms"
	"github.com/matryer/is"
)

func TestLoadConfiguration(t *testing.T) {
	is := is.New(t)

	cfg, err := LoadConfiguration(bytes.NewBufferString(configYaml))
	is.NoErr(err)

	is.Equal(cfg.Schedule.Poll, "*/2 * * * *")
	is.Equal(cfg.Schedule.Battery, "")
	is.True(cfg.Schedule.Enabled())
	is.Equal(cfg.WindowLookbackMinutes, 30)
	is.Equal(cfg.DailyStatsDays, 2)
	is.Equal(cfg.SuffixWords, []string{"sensor", "sensorn"})
}

func TestLoadEmptyConfigurationUsesDefaults(t *testing.T) {
	is := is.New(t)

	cfg, err := LoadConfiguration(bytes.NewBufferString(""))
	is.NoErr(err)

	is.True(!cfg.Schedule.Enabled())
	is.Equal(cfg.WindowLookbackMinutes, aggregation.DefaultLookbackMinutes)
	is.Equal(cfg.DailyStatsDays, 1)
	is.Equal(cfg.SuffixWords, rooms.DefaultSuffixWords)
}

func TestLoadBrokenConfiguration(t *testing.T) {
	is := is.New(t)

	_, err := LoadConfiguration(bytes.NewBufferString("schedule: [poll"))
	is.True(err != nil)
}

const configYaml string = `
schedule:
  poll: "*/2 * * * *"
  windows: "*/5 * * * *"
  dailyStats: "15 * * * *"
windowLookbackMinutes: 30
dailyStatsDays: 2
suffixWords:
  - sensor
  - sensorn
`
