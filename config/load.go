package config

import (
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// fileConfig mirrors the YAML layout of a config file. Dates are plain
// "2006-01-02" strings; everything omitted falls back to Default().
type fileConfig struct {
	Strategy struct {
		Pair                    string        `mapstructure:"pair"`
		Cycle                   time.Duration `mapstructure:"cycle"`
		LookbackWindow          int           `mapstructure:"lookback_window"`
		RSILength               int           `mapstructure:"rsi_length"`
		PositionSize            float64       `mapstructure:"position_size"`
		InitialDeposit          float64       `mapstructure:"initial_deposit"`
		TradingFee              float64       `mapstructure:"trading_fee"`
		StopLossRatio           float64       `mapstructure:"stop_loss_ratio"`
		TrailingStopRatio       float64       `mapstructure:"trailing_stop_ratio"`
		TrailingActivationRatio float64       `mapstructure:"trailing_activation_ratio"`
		StartAt                 string        `mapstructure:"start_at"`
		EndAt                   string        `mapstructure:"end_at"`
	} `mapstructure:"strategy"`
	Grid struct {
		RSIThresholds        []float64 `mapstructure:"rsi_thresholds"`
		StdDevMultipliers    []float64 `mapstructure:"stddev_multipliers"`
		MovingAverageLengths []int     `mapstructure:"moving_average_lengths"`
	} `mapstructure:"grid"`
}

const dateLayout = "2006-01-02"

// Load reads strategy and grid configuration from a YAML file, applying
// Default()/DefaultGrid() for anything the file leaves out, and validates
// the result.
func Load(path string) (StrategyConfig, GridConfig, error) {
	cfg := Default()
	grid := DefaultGrid()

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return cfg, grid, errors.Wrap(err, "read config file")
	}

	var fc fileConfig
	if err := v.Unmarshal(&fc); err != nil {
		return cfg, grid, errors.Wrap(err, "decode config file")
	}

	s := fc.Strategy
	if s.Pair != "" {
		cfg.Pair = s.Pair
	}
	if s.Cycle > 0 {
		cfg.CycleDuration = s.Cycle
	}
	if s.LookbackWindow > 0 {
		cfg.LookbackWindow = s.LookbackWindow
	}
	if s.RSILength > 0 {
		cfg.RSILength = s.RSILength
	}
	if s.PositionSize > 0 {
		cfg.PositionSize = s.PositionSize
	}
	if s.InitialDeposit > 0 {
		cfg.InitialDeposit = s.InitialDeposit
	}
	// A fee of zero is a legitimate setting, so presence decides here,
	// not the value. Every other numeric field must be positive anyway.
	if v.IsSet("strategy.trading_fee") {
		cfg.TradingFee = s.TradingFee
	}
	if s.StopLossRatio > 0 {
		cfg.StopLossRatio = s.StopLossRatio
	}
	if s.TrailingStopRatio > 0 {
		cfg.TrailingStopRatio = s.TrailingStopRatio
	}
	if s.TrailingActivationRatio > 0 {
		cfg.TrailingActivationRatio = s.TrailingActivationRatio
	}
	if s.StartAt != "" {
		t, err := time.Parse(dateLayout, s.StartAt)
		if err != nil {
			return cfg, grid, errors.Wrap(err, "parse strategy.start_at")
		}
		cfg.StartAt = t
	}
	if s.EndAt != "" {
		t, err := time.Parse(dateLayout, s.EndAt)
		if err != nil {
			return cfg, grid, errors.Wrap(err, "parse strategy.end_at")
		}
		cfg.EndAt = t
	}

	if len(fc.Grid.RSIThresholds) > 0 {
		grid.RSIThresholds = fc.Grid.RSIThresholds
	}
	if len(fc.Grid.StdDevMultipliers) > 0 {
		grid.StdDevMultipliers = fc.Grid.StdDevMultipliers
	}
	if len(fc.Grid.MovingAverageLengths) > 0 {
		grid.MovingAverageLengths = fc.Grid.MovingAverageLengths
	}

	if err := cfg.Validate(); err != nil {
		return cfg, grid, errors.Wrap(err, "invalid strategy config")
	}
	if err := grid.Validate(cfg.LookbackWindow); err != nil {
		return cfg, grid, errors.Wrap(err, "invalid grid config")
	}
	return cfg, grid, nil
}
