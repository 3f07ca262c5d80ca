package platform

import (
	"fmt"
	"mime"
	"net/url"
	"os"
	"os/exec"
	"path"
	"path/filepath"
	"runtime"
	"strings"
)

// Operating system constants
const (
	OSDarwin  = "darwin"
	OSWindows = "windows"
	OSLinux   = "linux"
	OSAndroid = "android"
	OSIOS     = "ios"
	OSJS      = "js"
)

// File permissions
const (
	DefaultDirPermissions  = 0755
	DefaultFilePermissions = 0644
)

// Directory names
const (
	AppDirName           = "CalmKids"
	AndroidDownloadsDir  = "/sdcard/Download"
	FallbackDocumentsDir = "/tmp/calmkids"
	DefaultFileName      = "download"
)

// Command constants
const (
	OpenCommand    = "open"
	CmdCommand     = "cmd"
	StartCommand   = "start"
	XDGOpenCommand = "xdg-open"
	AndroidAM      = "am"
	WindowsCmdFlag = "/c"
)

// runCommand executes an external command; replaced in tests
var runCommand = func(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

// IsAndroid reports whether the process is running on Android
func IsAndroid() bool {
	return runtime.GOOS == OSAndroid ||
		os.Getenv("ANDROID_DATA") != "" ||
		os.Getenv("ANDROID_ROOT") != "" ||
		filepath.Base(os.Args[0]) == "libdist.so" // Fyne Android apps run as libdist.so
}

// IsWeb reports whether the binary was built for the browser
func IsWeb() bool {
	return runtime.GOOS == OSJS
}

// GetDocumentsDir returns the directory downloaded content is saved into
func GetDocumentsDir() (string, error) {
	if IsAndroid() {
		// Shared storage so the share sheet's target apps can read the file
		return filepath.Join(AndroidDownloadsDir, AppDirName), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(homeDir, "Documents", AppDirName), nil
}

// CreateDirectoryIfNotExists creates directory if it doesn't exist
func CreateDirectoryIfNotExists(dirPath string) error {
	if _, err := os.Stat(dirPath); os.IsNotExist(err) {
		return os.MkdirAll(dirPath, DefaultDirPermissions)
	}
	return nil
}

// FilenameFromURL derives a local file name from the final path segment of a
// URL. Query and fragment are ignored; an unusable segment yields DefaultFileName.
func FilenameFromURL(rawURL string) string {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return DefaultFileName
	}

	p := rawURL
	if u, err := url.Parse(rawURL); err == nil {
		p = u.EscapedPath()
	} else if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}

	seg := path.Base(strings.TrimRight(p, "/"))
	if unescaped, err := url.PathUnescape(seg); err == nil {
		seg = unescaped
	}

	// Path separators in an unescaped segment would escape the target directory
	seg = strings.NewReplacer("/", "_", "\\", "_").Replace(seg)
	if seg == "" || seg == "." || seg == ".." {
		return DefaultFileName
	}
	return seg
}

// MimeTypeForFile guesses a MIME type from the file extension
func MimeTypeForFile(filePath string) string {
	if t := mime.TypeByExtension(strings.ToLower(filepath.Ext(filePath))); t != "" {
		// Drop parameters such as "; charset=utf-8"
		if i := strings.Index(t, ";"); i >= 0 {
			t = strings.TrimSpace(t[:i])
		}
		return t
	}
	return "*/*"
}

// OpenFileWithDefaultApp opens the file with the default system application
func OpenFileWithDefaultApp(filePath string) error {
	if _, err := os.Stat(filePath); err != nil {
		return fmt.Errorf("file does not exist: %v", err)
	}

	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}

	switch {
	case IsAndroid():
		return runCommand(AndroidAM, "start", "-a", "android.intent.action.VIEW",
			"-d", "file://"+absPath, "-t", MimeTypeForFile(absPath))
	case runtime.GOOS == OSDarwin:
		return runCommand(OpenCommand, absPath)
	case runtime.GOOS == OSWindows:
		return runCommand(CmdCommand, WindowsCmdFlag, StartCommand, "", absPath)
	case runtime.GOOS == OSLinux:
		return runCommand(XDGOpenCommand, absPath)
	default:
		return fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}
}

// NotifyMediaScanner notifies Android media scanner about new files
// so they show up in Gallery and Files apps
func NotifyMediaScanner(filePath string) error {
	if !IsAndroid() {
		return nil
	}

	return runCommand(AndroidAM, "broadcast", "-a", "android.intent.action.MEDIA_SCANNER_SCAN_FILE", "-d", "file://"+filePath)
}
