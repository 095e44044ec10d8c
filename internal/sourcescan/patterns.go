package sourcescan

// Capability buckets are disjoint on the pattern level: an identifier is
// listed under exactly one capability, and the rule engine combines buckets
// (e.g. camera present vs. playback-only) rather than the detector.
type Capability string

const (
	CapabilityCamera       Capability = "camera"
	CapabilityMicrophone   Capability = "microphone"
	CapabilityPlayback     Capability = "playback"
	CapabilitySpeech       Capability = "speech"
	CapabilityPhotoLibrary Capability = "photolibrary"
)

// identifierPatterns maps each capability to the API identifiers that are
// unambiguous evidence of it. A single umbrella framework (AVFoundation)
// serves playback, capture, and speech alike, which is why linkage alone is
// never treated as proof of capture.
var identifierPatterns = map[Capability][]string{
	CapabilityCamera: {
		"AVCaptureSession",
		"AVCaptureDevice",
		"AVCaptureMovieFileOutput",
		"AVCapturePhotoOutput",
		"AVCaptureVideoPreviewLayer",
		"AVCaptureVideoDataOutput",
		"UIImagePickerController.SourceType.camera",
		"UIImagePickerControllerSourceTypeCamera",
	},
	CapabilityMicrophone: {
		"AVAudioRecorder",
		"AVCaptureAudioDataOutput",
		"AVAudioSessionCategoryRecord",
		"AVAudioSession.CategoryOptions",
		"requestRecordPermission",
		"recordPermission",
		"AVAudioEngine",
		"installTap",
	},
	CapabilityPlayback: {
		"AVPlayer",
		"AVQueuePlayer",
		"AVPlayerViewController",
		"AVPlayerLayer",
		"AVAudioPlayer",
		"AVPlayerItem",
		"AVAudioSessionCategoryPlayback",
	},
	CapabilitySpeech: {
		"SFSpeechRecognizer",
		"SFSpeechAudioBufferRecognitionRequest",
		"SFSpeechURLRecognitionRequest",
		"requestAuthorization(SFSpeechRecognizer",
	},
	CapabilityPhotoLibrary: {
		"PHPhotoLibrary",
		"PHPickerViewController",
		"PHAsset",
		"PHAssetChangeRequest",
		"UIImagePickerController.SourceType.photoLibrary",
		"UIImagePickerControllerSourceTypePhotoLibrary",
	},
}

// contextualPatterns are generic identifiers that only count as evidence
// when one of their context tokens also appears in the same file. A bare
// startRecording call could record a screen, audio, or a replay; it is only
// camera evidence next to a capture identifier.
var contextualPatterns = []struct {
	capability Capability
	identifier string
	context    []string
}{
	{CapabilityCamera, "startRecording", []string{"AVCapture", "movieFileOutput", "captureSession"}},
	{CapabilityCamera, "startRunning", []string{"AVCapture", "captureSession"}},
	{CapabilityMicrophone, "record()", []string{"AVAudioRecorder", "audioRecorder"}},
}

// frameworkImports maps import names to flags the rule engine reads.
var frameworkImports = []string{
	"AVFoundation",
	"AVKit",
	"Photos",
	"PhotosUI",
	"Speech",
	"CoreLocation",
	"CoreBluetooth",
	"AppTrackingTransparency",
	"AuthenticationServices",
}
