package led

import (
	"log/slog"
	"os"
	"strings"
)

const deviceTreeModelPath = "/proc/device-tree/model"

// New creates an LED controller based on board detection. Boards
// without known LEDs get a no-op controller.
func New(logger *slog.Logger) Controller {
	boardModel := detectBoard()
	logger.Debug("detecting board for LED control", "board_model", boardModel)

	switch {
	case strings.Contains(boardModel, "NanoPC-T6"):
		logger.Info("using sysfs LED controller", "board", "NanoPC-T6")
		return newSysfs(map[string]string{"activity": "usr_led"})

	case strings.Contains(boardModel, "Orange Pi"):
		logger.Info("using sysfs LED controller", "board", "Orange Pi")
		return newSysfs(map[string]string{"activity": "blue_led"})

	case strings.Contains(boardModel, "Raspberry Pi"):
		logger.Info("using sysfs LED controller", "board", "Raspberry Pi")
		return newSysfs(map[string]string{"activity": "ACT"})

	default:
		logger.Debug("no known LEDs on this board, LED control disabled")
		return newNoop(logger)
	}
}

// detectBoard reads the device tree model string, empty when absent.
func detectBoard() string {
	data, err := os.ReadFile(deviceTreeModelPath)
	if err != nil {
		return ""
	}
	return strings.TrimRight(string(data), "\x00\n")
}
