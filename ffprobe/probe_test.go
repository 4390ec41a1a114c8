package ffprobe

import (
	"encoding/json"
	"testing"
)

// sampleOutput mirrors the shape of real ffprobe JSON output.
const sampleOutput = `{
  "streams": [
    {
      "index": 0,
      "codec_name": "h264",
      "codec_type": "video",
      "codec_long_name": "H.264 / AVC / MPEG-4 AVC / MPEG-4 part 10",
      "width": 1280,
      "height": 720,
      "avg_frame_rate": "30/1"
    },
    {
      "index": 1,
      "codec_name": "aac",
      "codec_type": "audio",
      "codec_long_name": "AAC (Advanced Audio Coding)"
    }
  ],
  "format": {
    "filename": "/videos/clip_001.mp4",
    "format_name": "mov,mp4,m4a,3gp,3g2,mj2",
    "format_long_name": "QuickTime / MOV",
    "duration": "15.500000",
    "size": "1048576",
    "bit_rate": "541200"
  }
}`

func parseSample(t *testing.T) *ProbeResult {
	t.Helper()

	var result ProbeResult
	if err := json.Unmarshal([]byte(sampleOutput), &result); err != nil {
		t.Fatalf("Failed to parse sample output: %v", err)
	}
	return &result
}

func TestProbeResult_GetDuration(t *testing.T) {
	result := parseSample(t)

	duration, err := result.GetDuration()
	if err != nil {
		t.Fatalf("GetDuration failed: %v", err)
	}

	if duration != 15.5 {
		t.Errorf("Expected duration 15.5, got %f", duration)
	}
}

func TestProbeResult_GetDuration_Missing(t *testing.T) {
	result := &ProbeResult{}

	_, err := result.GetDuration()
	if err == nil {
		t.Error("Expected error for missing duration")
	}
}

func TestProbeResult_GetDuration_Unparsable(t *testing.T) {
	result := &ProbeResult{Format: Format{Duration: "N/A"}}

	_, err := result.GetDuration()
	if err == nil {
		t.Error("Expected error for unparsable duration")
	}
}

func TestProbeResult_GetVideoStreams(t *testing.T) {
	result := parseSample(t)

	videoStreams := result.GetVideoStreams()
	if len(videoStreams) != 1 {
		t.Fatalf("Expected 1 video stream, got %d", len(videoStreams))
	}

	if videoStreams[0].CodecName != "h264" {
		t.Errorf("Expected codec h264, got %s", videoStreams[0].CodecName)
	}

	if !result.HasVideo() {
		t.Error("Expected HasVideo to be true")
	}
}

func TestProbeResult_HasVideo_AudioOnly(t *testing.T) {
	result := &ProbeResult{
		Streams: []Stream{
			{Index: 0, CodecName: "aac", CodecType: "audio"},
		},
	}

	if result.HasVideo() {
		t.Error("Expected HasVideo to be false for audio-only file")
	}
}

func TestProbe_EmptyPath(t *testing.T) {
	_, err := Probe("")
	if err == nil {
		t.Error("Expected error for empty source path")
	}
}
