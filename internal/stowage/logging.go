package stowage

import "go.uber.org/zap"

// decisionLogger records placement/removal/waste decisions at the level
// the teacher's gateway middleware uses: Info for accepted decisions, Warn
// for rejections, blocked removals and cancellations. Nothing is logged at
// Error level.
type decisionLogger struct {
	z *zap.Logger
}

func newNopLogger() *decisionLogger {
	return &decisionLogger{z: zap.NewNop()}
}

func (l *decisionLogger) placed(containerID string, item PlacedItem, score float64) {
	l.z.Info("item placed",
		zap.String("container_id", containerID),
		zap.String("item_id", item.ID),
		zap.Int("pos_x", item.Position.X),
		zap.Int("pos_y", item.Position.Y),
		zap.Int("pos_z", item.Position.Z),
		zap.Float64("score", score),
	)
}

func (l *decisionLogger) rejected(containerID, itemID string, reason error) {
	l.z.Warn("placement rejected",
		zap.String("container_id", containerID),
		zap.String("item_id", itemID),
		zap.Error(reason),
	)
}

func (l *decisionLogger) removed(containerID, itemID string) {
	l.z.Info("item removed",
		zap.String("container_id", containerID),
		zap.String("item_id", itemID),
	)
}

func (l *decisionLogger) blocked(containerID, itemID string, blockers []string) {
	l.z.Warn("removal blocked",
		zap.String("container_id", containerID),
		zap.String("item_id", itemID),
		zap.Strings("blockers", blockers),
	)
}

func (l *decisionLogger) wasteMarked(containerID, itemID, reason string) {
	l.z.Info("item marked waste",
		zap.String("container_id", containerID),
		zap.String("item_id", itemID),
		zap.String("reason", reason),
	)
}

func (l *decisionLogger) cancelled(containerID, operation string) {
	l.z.Warn("operation cancelled",
		zap.String("container_id", containerID),
		zap.String("operation", operation),
	)
}
