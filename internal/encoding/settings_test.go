package encoding

import (
	"slices"
	"testing"

	"reelcast/internal/hwaccel"
	"reelcast/internal/reel"
)

func TestSelectSettingsSoftwareFallback(t *testing.T) {
	cfg := reel.RenderConfig{FPS: 30, Bitrate: "6000k", HardwareAcceleration: true, Workers: 4}
	settings := SelectSettings(cfg, hwaccel.Capabilities{CUDAResize: true})
	if settings.Codec != CodecSoftware || settings.Preset != DefaultSoftwarePreset || settings.Hardware {
		t.Fatalf("expected libx264 medium without NVENC, got %+v", settings)
	}
	args := settings.VideoArgs()
	want := []string{"-c:v", "libx264", "-preset", "medium", "-b:v", "6000k", "-r", "30", "-pix_fmt", "yuv420p", "-threads", "4"}
	if !slices.Equal(args, want) {
		t.Fatalf("unexpected args\n got %v\nwant %v", args, want)
	}
}

func TestSelectSettingsNVENC(t *testing.T) {
	cfg := reel.RenderConfig{FPS: 24, HardwareAcceleration: true, Workers: 0}
	settings := SelectSettings(cfg, hwaccel.Capabilities{NVENC: true})
	if settings.Codec != CodecNVENC || settings.Preset != DefaultHardwarePreset || !settings.Hardware {
		t.Fatalf("expected h264_nvenc p7, got %+v", settings)
	}
	args := settings.VideoArgs()
	if !slices.Contains(args, "vbr") {
		t.Fatalf("expected -rc vbr: %v", args)
	}
	if settings.Bitrate != DefaultBitrate || settings.Threads != 1 {
		t.Fatalf("expected default bitrate and one thread, got %+v", settings)
	}
}

func TestSelectSettingsRespectsDisabledAcceleration(t *testing.T) {
	cfg := reel.RenderConfig{FPS: 30, HardwareAcceleration: false, SoftwarePreset: "veryfast"}
	settings := SelectSettings(cfg, hwaccel.Capabilities{NVENC: true})
	if settings.Codec != CodecSoftware || settings.Preset != "veryfast" {
		t.Fatalf("expected software encoder when disabled, got %+v", settings)
	}
	if got := settings.AudioArgs(); !slices.Equal(got, []string{"-c:a", "aac", "-b:a", "192k"}) {
		t.Fatalf("unexpected audio args %v", got)
	}
}

func TestSelectSettingsResolvesCodecPerRun(t *testing.T) {
	cfg := reel.RenderConfig{FPS: 30, HardwareAcceleration: true}
	cases := []struct {
		caps hwaccel.Capabilities
		want string
	}{
		{hwaccel.Software().Capabilities(), CodecSoftware},
		{hwaccel.Capabilities{NVENC: true}, CodecNVENC},
	}
	for _, tc := range cases {
		settings := SelectSettings(cfg, tc.caps)
		if settings.Codec != tc.want {
			t.Fatalf("caps %+v: codec %q, want %q", tc.caps, settings.Codec, tc.want)
		}
		if !slices.Contains(settings.VideoArgs(), tc.want) {
			t.Fatalf("video args %v missing codec %q", settings.VideoArgs(), tc.want)
		}
	}
}
