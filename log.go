package rangecache

import "github.com/sirupsen/logrus"

var log = logrus.WithField("prefix", "rangecache")
