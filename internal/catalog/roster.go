package catalog

// Fixed pools the leaderboard synthesizer draws competitor names and
// avatars from. Order matters: roster generation indexes into these with
// the seeded generator, so reordering changes every synthesized roster.
var AthleteNames = []string{
	"Arjun Singh", "Priya Sharma", "Rahul Kumar", "Sneha Patel", "Vikram Reddy",
	"Anita Gupta", "Rohit Agarwal", "Kavya Iyer", "Suresh Nair", "Meera Joshi",
	"Amit Verma", "Pooja Das", "Kiran Rao", "Deepak Shah", "Ritu Bansal",
	"Ajay Mishra", "Swati Kulkarni", "Manish Tiwari", "Neha Chopra", "Sanjay Bhatt",
}

var AthleteAvatars = []string{
	"🏃‍♂️", "🏃‍♀️", "🏋️‍♂️", "🏋️‍♀️", "🤸‍♂️", "🤸‍♀️", "🚴‍♂️", "🚴‍♀️",
}
