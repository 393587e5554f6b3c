// Package commentary maps computed numbers to canned one-liners for display.
package commentary

// ForContributions returns a quip for a yearly contribution total. Thresholds
// are deliberately coarse; the text is cosmetic.
func ForContributions(count int) string {
	switch {
	case count == 0:
		return "The GitHub void has spoken... and it's deafening silence."
	case count < 10:
		return "You're learning! Slowly. Like a penguin on ice."
	case count < 50:
		return "Tiny seedling energy! Your code garden is sprouting!"
	case count < 100:
		return "Now we're cooking! You've got the momentum of a caffeinated squirrel!"
	case count < 250:
		return "Beast mode unlocked! Your contribution graph is looking thick and spicy!"
	case count < 500:
		return "Are you even human? This count screams 'I AM ONE WITH THE CODE'!"
	case count < 1000:
		return "LEGEND STATUS ACHIEVED! Your GitHub profile is basically a lifestyle brand now!"
	case count < 2000:
		return "ELITE TIER! Honestly, we're not worthy! Your commits have commits!"
	case count < 5000:
		return "Are you from the future? This count defies physics and human limitations!"
	default:
		return "CONTRIBUTION SINGULARITY ACHIEVED! You ARE the algorithm!"
	}
}

// ForStreak returns a quip for a longest-streak length in days
func ForStreak(days int) string {
	switch {
	case days == 0:
		return "No streak. Every day is a fresh start!"
	case days < 7:
		return "A warm-up streak. The keyboard barely noticed."
	case days < 30:
		return "A solid run! Consistency looks good on you."
	case days < 100:
		return "A streak with serious commitment issues. As in, committed every day."
	default:
		return "An unbroken wall of green. Touch grass occasionally!"
	}
}
