package scenes

// SceneChanger lets scenes swap the active scene on the game.
type SceneChanger interface {
	ChangeScene(scene interface{})
}
