package satcam

/*------------------------------------------------------------------
 *
 * Purpose:	Tones sent around an SSTV picture.
 *
 * Description:	VOX tones open the receiving station's voice operated
 *		switch before the picture and close it after.
 *
 *		The VIS header tells the receiver which mode follows:
 *
 *			1900 Hz	300 ms	leader
 *			1200 Hz	 10 ms	break
 *			1900 Hz	300 ms	leader
 *			1200 Hz	 30 ms	start bit
 *			data bits, LSB first, 30 ms each,
 *				1100 Hz for 1, 1300 Hz for 0
 *			1200 Hz	 30 ms	stop bit
 *
 *		The 8 bit codes carry 7 data bits and even parity.  The
 *		MP modes use a 16 bit code instead.
 *
 *---------------------------------------------------------------*/

import "time"

const (
	visLeaderFreq = 1900
	visBreakFreq  = 1200
	visOneFreq    = 1100
	visZeroFreq   = 1300

	visLeader = 300 * time.Millisecond
	visBreak  = 10 * time.Millisecond
	visBit    = 30 * time.Millisecond

	voxTone = 100 * time.Millisecond
)

var voxStartFreqs = []int{2300, 1500, 2300, 1500}

var voxStopFreqs = []int{1900, 1500, 1900, 1500}

// VOXStart sends the stop sequence followed by the start sequence.
func (e *Encoder) VOXStart(volume Q15) {
	e.VOXStop(volume)
	for _, f := range voxStartFreqs {
		e.Tone(e.Samples(voxTone), f, volume)
	}
}

func (e *Encoder) VOXStop(volume Q15) {
	for _, f := range voxStopFreqs {
		e.Tone(e.Samples(voxTone), f, volume)
	}
}

// VIS sends the header for a mode code of 8 or 16 bits.
func (e *Encoder) VIS(code uint16, bits int, volume Q15) {
	e.Tone(e.Samples(visLeader), visLeaderFreq, volume)
	e.Tone(e.Samples(visBreak), visBreakFreq, volume)
	e.Tone(e.Samples(visLeader), visLeaderFreq, volume)
	e.Tone(e.Samples(visBit), visBreakFreq, volume)

	for range bits {
		if code&1 != 0 {
			e.Tone(e.Samples(visBit), visOneFreq, volume)
		} else {
			e.Tone(e.Samples(visBit), visZeroFreq, volume)
		}
		code >>= 1
	}

	e.Tone(e.Samples(visBit), visBreakFreq, volume)
}
