package models

// PublishScoresRequest marks game numbers visible on the public
// scoreboard.
type PublishScoresRequest struct {
	GameNumbers []int `json:"game_numbers" validate:"required,min=1,dive,gte=1"`
}

// GenerateGroupsRequest partitions the registered roster into qualifier
// groups.
type GenerateGroupsRequest struct {
	NumberOfGroups int `json:"number_of_groups" validate:"required,gte=1"`
}

// GameResultInput is one team's raw outcome as entered by an organizer.
type GameResultInput struct {
	TeamID    string `json:"team_id" validate:"required"`
	Placement int    `json:"placement" validate:"required,gte=1"`
	Kills     int    `json:"kills" validate:"gte=0"`
}

// SaveResultsRequest replaces the full result set of one game.
type SaveResultsRequest struct {
	Results []GameResultInput `json:"results" validate:"required,min=1,dive"`
}
