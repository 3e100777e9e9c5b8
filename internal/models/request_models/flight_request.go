package request_models

type FlightSearchRequest struct {
	From string `form:"from" binding:"required"`
	To   string `form:"to" binding:"required"`
	Date string `form:"date" binding:"required"`
	// Time is an optional HH:MM departure target; flights up to three
	// hours after it are kept.
	Time   string `form:"time"`
	Adults int    `form:"adults" binding:"omitempty,min=1,max=9"`
}
