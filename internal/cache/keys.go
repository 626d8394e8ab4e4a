package cache

import "strconv"

// Keys and tags are pure functions of stable identifiers: a mutation must be
// able to rebuild exactly what a reader used.

func UserKey(userID string) string {
	return "user:" + userID
}

func ImageKey(imageID string) string {
	return "image:" + imageID
}

func UserTagsByUsageKey(userID string) string {
	return "userTagsByUsage:" + userID
}

func UserTagsByNameKey(userID string) string {
	return "userTagsByName:" + userID
}

func UserImageCountKey(userID string) string {
	return "userImageCount:" + userID
}

func UserImagesKey(userID string, page int) string {
	return "userImages:" + userID + ":" + strconv.Itoa(page)
}

func UserTagImagesKey(userID, tagID string) string {
	return "userTagImages:" + userID + ":" + tagID
}

func UserTag(userID string) string {
	return "/user/" + userID
}

func UserTagTag(userID, tagID string) string {
	return "/user/" + userID + "/tag/" + tagID
}

func UserImageTag(userID, imageID string) string {
	return "/user/" + userID + "/image/" + imageID
}
