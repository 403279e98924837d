// Package discordgo provides Discord API adapters using package github.com/bwmarrin/discordgo
package discordgo

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/charmbracelet/log"

	"github.com/benjamonnguyen/pomomo-timer"
)

// VoiceAlert plays an opus clip in a voice channel in place of a tone.
type VoiceAlert struct {
	cl       *discordgo.Session
	gID, cID string
	packets  [][]byte
	l        *log.Logger

	playMu sync.Mutex
}

var _ pomomo.AudioSink = (*VoiceAlert)(nil)

func NewVoiceAlert(cl *discordgo.Session, gID, cID string, packets [][]byte, logger *log.Logger) *VoiceAlert {
	return &VoiceAlert{
		cl:      cl,
		gID:     gID,
		cID:     cID,
		packets: packets,
		l:       logger,
	}
}

// PlayTone plays the clip once. Tones requested while the clip is still
// playing are dropped.
func (w *VoiceAlert) PlayTone(ctx context.Context, _ int, _ time.Duration) error {
	if len(w.packets) == 0 {
		return nil
	}
	if !w.playMu.TryLock() {
		w.l.Debug("voice alert already playing - skip")
		return nil
	}
	defer w.playMu.Unlock()

	conn, err := w.cl.ChannelVoiceJoin(w.gID, w.cID, false, true)
	if err != nil {
		return fmt.Errorf("failed to join voice channel: %w", err)
	}
	if err := conn.Speaking(true); err != nil {
		return err
	}
	for _, p := range w.packets {
		select {
		case <-ctx.Done():
			_ = conn.Speaking(false)
			return ctx.Err()
		case conn.OpusSend <- p:
		}
	}
	return conn.Speaking(false)
}

// Close leaves every voice channel the session joined.
func (w *VoiceAlert) Close() {
	var wg sync.WaitGroup
	for _, conn := range w.cl.VoiceConnections {
		wg.Go(func() {
			_ = conn.Disconnect()
		})
	}
	wg.Wait()
}

// LoadDCA reads opus packets from a DCA container: each frame is a
// little-endian int16 length followed by that many bytes.
func LoadDCA(r io.Reader) ([][]byte, error) {
	var packets [][]byte
	var frameLen int16
	for {
		if err := binary.Read(r, binary.LittleEndian, &frameLen); err != nil {
			if errors.Is(err, io.EOF) {
				return packets, nil
			}
			return nil, fmt.Errorf("failed to read frame length: %w", err)
		}
		if frameLen < 0 {
			return nil, fmt.Errorf("invalid frame length %d", frameLen)
		}

		packet := make([]byte, frameLen)
		if _, err := io.ReadFull(r, packet); err != nil {
			return nil, fmt.Errorf("failed to read frame: %w", err)
		}
		packets = append(packets, packet)
	}
}

func LoadDCAFile(path string) ([][]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint
	return LoadDCA(f)
}
