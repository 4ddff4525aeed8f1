package config

// SpeedSchedule calculates the tick rate from the number of items consumed.
type SpeedSchedule struct {
	cfg SpeedConfig
}

// NewSpeedSchedule creates a speed schedule.
func NewSpeedSchedule(cfg SpeedConfig) SpeedSchedule {
	return SpeedSchedule{cfg: cfg}
}

// Speed returns ticks per second after consumed items.
// fastForward applies the hold-to-accelerate multiplier.
func (s SpeedSchedule) Speed(consumed int, fastForward bool) int {
	every := s.cfg.StepEvery
	if every <= 0 {
		every = 1 // Prevent division by zero
	}
	speed := s.cfg.Base + s.cfg.Step*(consumed/every)
	if fastForward && s.cfg.FastForward > 1 {
		speed *= s.cfg.FastForward
	}
	if speed < 1 {
		speed = 1
	}
	return speed
}

// ApplySnakePreset modifies the config based on a difficulty preset.
// Normal leaves the loaded values untouched.
func ApplySnakePreset(cfg *SnakeConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Speed.Step = 0
		return
	}

	var speed, walls, poison float64
	switch preset {
	case DifficultyEasy:
		speed, walls, poison = 0.7, 0.75, 0.67
	case DifficultyHard:
		speed, walls, poison = 1.35, 1.25, 1.67
	default:
		return
	}

	cfg.Speed.Base = max(1, int(float64(cfg.Speed.Base)*speed+0.5))

	// Modes share hazard slices with the embedded defaults; copy before scaling.
	modes := make([]ModeConfig, len(cfg.Modes))
	for i, m := range cfg.Modes {
		hazards := make([]HazardConfig, len(m.Hazards))
		for j, hz := range m.Hazards {
			switch hz.Kind {
			case HazardWall:
				hz.Length = max(1, int(float64(hz.Length)*walls+0.5))
			case HazardPoison:
				hz.Count = max(1, int(float64(hz.Count)*poison+0.5))
			}
			hazards[j] = hz
		}
		m.Hazards = hazards
		modes[i] = m
	}
	cfg.Modes = modes
}
