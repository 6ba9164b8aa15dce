package platform

import (
	"autoclicker/internal/core/model"

	"github.com/go-vgo/robotgo"
)

// RobotExecutor injects input through robotgo on every desktop OS.
type RobotExecutor struct{}

// NewRobotExecutor returns the native executor.
func NewRobotExecutor() *RobotExecutor {
	return &RobotExecutor{}
}

func (executor *RobotExecutor) Position() (model.Point, error) {
	x, y := robotgo.Location()
	return model.Point{X: x, Y: y}, nil
}

func (executor *RobotExecutor) Move(point model.Point) error {
	robotgo.Move(point.X, point.Y)
	return nil
}

func (executor *RobotExecutor) Click(button model.Button) error {
	if err := button.Validate(); err != nil {
		return err
	}
	robotgo.Click(robotButton(button), false)
	return nil
}

// robotgo calls the middle button "center".
func robotButton(button model.Button) string {
	if button == model.ButtonMiddle {
		return "center"
	}
	return string(button)
}
