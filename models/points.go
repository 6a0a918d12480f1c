package models

// Point awards for Q&A activity. Each delta is paid once per qualifying
// action; accept pays only on the unsolved->solved transition.
const (
	PointsAskQuestion    = 5
	PointsAnswerQuestion = 10
	PointsVoteReceived   = 2
	PointsAnswerAccepted = 15
)
