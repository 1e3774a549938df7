package audio

import (
	"github.com/gopxl/beep"

	"github.com/lixenwraith/liveheart/parameter"
)

// collectTick is a short blip whose pitch tracks collection progress in [0,100]
func collectTick(progress float64, rate beep.SampleRate) beep.Streamer {
	p := min(max(progress, 0), parameter.ProgressMax) / parameter.ProgressMax
	freq := parameter.CollectTickBaseHz + p*parameter.CollectTickSpanHz
	s := tone(freq, parameter.CollectTickDuration, parameter.CollectTickAttack, parameter.CollectTickRelease, WaveSine, rate)
	return newVolume(s, parameter.CollectTickVolume)
}

// crystallizeChime rings a fundamental with a faster-decaying octave
func crystallizeChime(rate beep.SampleRate) beep.Streamer {
	fund := tone(parameter.ChimeFundamentalHz, parameter.ChimeDuration, parameter.ChimeAttack, parameter.ChimeFundamentalTail, WaveSine, rate)
	over := tone(parameter.ChimeFundamentalHz*2, parameter.ChimeDuration, parameter.ChimeAttack, parameter.ChimeOvertoneTail, WaveSine, rate)
	return newVolume(beep.Mix(newVolume(fund, 0.7), newVolume(over, 0.3)), parameter.ChimeVolume)
}

// saveOK plays two rising square notes
func saveOK(rate beep.SampleRate) beep.Streamer {
	n1 := tone(parameter.SaveNote1Hz, parameter.SaveNote1Duration, parameter.SaveNoteAttack, parameter.SaveNote1Release, WaveSquare, rate)
	n2 := tone(parameter.SaveNote2Hz, parameter.SaveNote2Duration, parameter.SaveNoteAttack, parameter.SaveNote2Release, WaveSquare, rate)
	return newVolume(beep.Seq(n1, n2), parameter.SaveVolume)
}

// saveError is a low saw buzz
func saveError(rate beep.SampleRate) beep.Streamer {
	s := tone(parameter.ErrorSoundHz, parameter.ErrorSoundDuration, parameter.ErrorSoundAttack, parameter.ErrorSoundRelease, WaveSaw, rate)
	return newVolume(s, parameter.ErrorVolume)
}

// restartWhoosh is a swelling burst of noise
func restartWhoosh(rate beep.SampleRate) beep.Streamer {
	s := tone(0, parameter.WhooshDuration, parameter.WhooshAttack, parameter.WhooshRelease, WaveNoise, rate)
	return newVolume(s, parameter.WhooshVolume)
}

// cueStreamer builds a fresh streamer for a cue; progress only affects CueCollect
func cueStreamer(c Cue, progress float64, rate beep.SampleRate) beep.Streamer {
	switch c {
	case CueCollect:
		return collectTick(progress, rate)
	case CueCrystallize:
		return crystallizeChime(rate)
	case CueSaveOK:
		return saveOK(rate)
	case CueSaveError:
		return saveError(rate)
	case CueRestart:
		return restartWhoosh(rate)
	default:
		return nil
	}
}
