package main

import "github.com/nosorae/nowinandroid-topic-sample/cmd/topicscreen/cmd"

func main() {
	cmd.Execute()
}
