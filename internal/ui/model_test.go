package ui

import (
	"testing"

	"github.com/downify/downify/session"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

func TestView(t *testing.T) {
	Convey("Given a notifier", t, func() {
		m := &Model{}

		Convey("Without a notification the content is unchanged", func() {
			So(m.View("main"), ShouldEqual, "main")
		})

		Convey("A notification is appended below the content", func() {
			m.Set(mo.Some(session.Notification{Kind: session.Error, Message: "Connection Error"}))
			view := m.View("main\n")
			So(view, ShouldStartWith, "main\n\n")
			So(view, ShouldContainSubstring, "Connection Error")
		})

		Convey("Clearing it restores the content", func() {
			m.Set(mo.Some(session.Notification{Kind: session.Success, Message: "done"}))
			m.Set(mo.None[session.Notification]())
			So(m.View("main"), ShouldEqual, "main")
		})
	})
}
