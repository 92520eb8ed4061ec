package hwmon

import (
	"os"
	"path/filepath"
	"strings"
)

// GetDeviceName reads the name of a device
func GetDeviceName(devicePath string) string {
	content, _ := os.ReadFile(filepath.Join(devicePath, "name"))
	name := strings.TrimSpace(string(content))
	if len(name) <= 0 {
		_, name = filepath.Split(devicePath)
	}
	return name
}

// GetDeviceModalias reads the modalias of a device
func GetDeviceModalias(devicePath string) string {
	content, _ := os.ReadFile(filepath.Join(devicePath, "device", "modalias"))
	return strings.TrimSpace(string(content))
}

// GetDeviceType reads the type of a device
func GetDeviceType(devicePath string) string {
	content, _ := os.ReadFile(filepath.Join(devicePath, "device", "type"))
	return strings.TrimSpace(string(content))
}

// getLabel reads the label of an in/output of a device
func getLabel(devicePath string, input string) string {
	labelPath := filepath.Join(devicePath, strings.TrimSuffix(input, "input")+"label")

	content, _ := os.ReadFile(labelPath)
	label := strings.TrimSpace(string(content))
	if len(label) <= 0 {
		label = strings.TrimSuffix(input, "_input")
	}
	return label
}
