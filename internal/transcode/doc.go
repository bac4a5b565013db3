// Package transcode re-encodes demo videos for the web by shelling out to
// ffmpeg with a fixed H.264/AAC argument set.
//
// Each Process call runs the encoder exactly once. Output goes to a hidden
// sibling of the destination and is renamed into place only on a zero exit,
// so a failed or interrupted encode never leaves a truncated MP4 behind.
// Non-zero exits come back as *ExitError carrying the captured stderr.
package transcode
